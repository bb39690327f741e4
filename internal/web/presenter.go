package web

import (
	"html/template"
	"net/url"

	"epubshelf/internal/catalog"
	"epubshelf/internal/domain"
)

type categoryLink struct {
	Name   string
	URL    string
	Active bool
}

// pageData is what the page template renders
type pageData struct {
	Categories       []categoryLink
	ActiveCategory   string
	SearchTerm       string
	Books            []domain.Book
	NoResults        bool
	LoadError        bool
	About            template.HTML
	LoadErrorMessage string
	NoResultsMessage string
	DownloadLabel    string
}

// pagePresenter records what the controller asks for so a single page
// can be rendered from it
type pagePresenter struct {
	page pageData
}

func newPagePresenter(searchTerm string, about template.HTML) *pagePresenter {
	return &pagePresenter{page: pageData{
		SearchTerm:       searchTerm,
		About:            about,
		LoadErrorMessage: catalog.LoadErrorMessage,
		NoResultsMessage: catalog.NoResultsMessage,
		DownloadLabel:    catalog.DownloadLabel,
	}}
}

func (p *pagePresenter) RenderCategories(categories []string, active string) {
	p.page.ActiveCategory = active
	p.page.Categories = make([]categoryLink, 0, len(categories))
	for _, name := range categories {
		p.page.Categories = append(p.page.Categories, categoryLink{
			Name:   name,
			URL:    pageURL(name, p.page.SearchTerm),
			Active: name == active,
		})
	}
}

func (p *pagePresenter) RenderBooks(books []domain.Book) {
	p.page.Books = books
	p.page.NoResults = false
}

func (p *pagePresenter) RenderNoResults() {
	p.page.Books = nil
	p.page.NoResults = true
}

func (p *pagePresenter) RenderLoadError() {
	p.page.LoadError = true
}

// pageURL links to the page with the given filters
func pageURL(category, searchTerm string) string {
	q := url.Values{}
	if category != domain.AllCategories {
		q.Set("category", category)
	}
	if searchTerm != "" {
		q.Set("q", searchTerm)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
