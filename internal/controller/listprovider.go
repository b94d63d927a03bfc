package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultPageSize mirrors the server-side default
const DefaultPageSize = 20

// ListProvider owns the filter state and the cached page for one entity
// type. The cache is only ever invalidated, never patched locally; the
// server remains the single source of truth.
type ListProvider struct {
	client     APIClient
	descriptor EntityDescriptor
	log        *zap.Logger

	mu      sync.Mutex
	filter  Filter
	records []Record
	total   int64
	locked  bool
	loaded  bool
}

// NewListProvider creates a list provider with the default filter
func NewListProvider(client APIClient, descriptor EntityDescriptor, log *zap.Logger) *ListProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListProvider{
		client:     client,
		descriptor: descriptor,
		log:        log,
		filter:     Filter{PageNumber: 1, PageSize: DefaultPageSize},
	}
}

// SetSearch updates the search term and resets to the first page
func (p *ListProvider) SetSearch(search string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.filter.Search == search {
		return
	}
	p.filter.Search = search
	p.filter.PageNumber = 1
	p.loaded = false
}

// SetSort updates the sort and resets to the first page
func (p *ListProvider) SetSort(sortBy, sortOrder string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.filter.SortBy == sortBy && p.filter.SortOrder == sortOrder {
		return
	}
	p.filter.SortBy = sortBy
	p.filter.SortOrder = sortOrder
	p.filter.PageNumber = 1
	p.loaded = false
}

// SetPageSize updates the page size. Any change resets to page one; setting
// the same size twice leaves the request parameters untouched.
func (p *ListProvider) SetPageSize(pageSize int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pageSize < 1 || p.filter.PageSize == pageSize {
		return
	}
	p.filter.PageSize = pageSize
	p.filter.PageNumber = 1
	p.loaded = false
}

// SetPage moves to the given page without touching the rest of the filter
func (p *ListProvider) SetPage(pageNumber int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pageNumber < 1 || p.filter.PageNumber == pageNumber {
		return
	}
	p.filter.PageNumber = pageNumber
	p.loaded = false
}

// Filter returns a copy of the current filter
func (p *ListProvider) Filter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// Refresh fetches the current page from the server. A locked envelope
// empties the view and flips the locked flag; an empty result is not an
// error, just zero rows.
func (p *ListProvider) Refresh(ctx context.Context) error {
	p.mu.Lock()
	filter := p.filter
	p.mu.Unlock()

	env, err := p.client.List(ctx, p.descriptor.Name, filter)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch env.Result {
	case ResultLocked:
		p.records = nil
		p.total = 0
		p.locked = true
		p.loaded = true
	case ResultSuccess:
		records, err := env.Records()
		if err != nil {
			return err
		}
		p.records = records
		p.locked = false
		p.loaded = true
		if env.TotalRecords != nil {
			p.total = *env.TotalRecords
		} else {
			p.total = int64(len(records))
		}
	default:
		// result 0: empty or failure; either way there is nothing to show
		p.records = nil
		p.total = 0
		p.locked = false
		p.loaded = true
	}
	return nil
}

// Invalidate drops the cached page so the next access refetches
func (p *ListProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = false
}

// Loaded reports whether the cache holds a current page
func (p *ListProvider) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Locked reports whether the last fetch answered the locked result code
func (p *ListProvider) Locked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// Records returns the cached page
func (p *ListProvider) Records() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Record, len(p.records))
	copy(out, p.records)
	return out
}

// TotalRecords returns the authoritative total from the last fetch
func (p *ListProvider) TotalRecords() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// FindByID resolves a row from the cached page by its id. Only the loaded
// page is consulted; this is a local lookup, not a fetch.
func (p *ListProvider) FindByID(id int64) (Record, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.records {
		if p.descriptor.ID(r) == id {
			return r, true
		}
	}
	return nil, false
}
