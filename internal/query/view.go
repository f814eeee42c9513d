package query

// ViewState is the browsing state of a client: the active filters plus how
// many pages have been revealed. Every change returns a new value; changing a
// filter starts over at the first page.
type ViewState struct {
	category string
	search   string
	price    string
	sort     string
	page     int
	pageSize int
}

func NewViewState(pageSize int) ViewState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return ViewState{price: "all", pageSize: pageSize}
}

func (v ViewState) WithCategory(category string) ViewState {
	v.category = category
	v.page = 0
	return v
}

func (v ViewState) WithSearch(text string) ViewState {
	v.search = text
	v.page = 0
	return v
}

func (v ViewState) WithPrice(price string) ViewState {
	v.price = price
	v.page = 0
	return v
}

func (v ViewState) WithSort(sort string) ViewState {
	v.sort = sort
	v.page = 0
	return v
}

// AtPage jumps to a 0-based page without touching the filters.
func (v ViewState) AtPage(index int) ViewState {
	v.page = index
	return v
}

// NextPage is the "load more" transition.
func (v ViewState) NextPage() ViewState {
	v.page++
	return v
}

func (v ViewState) Category() string { return v.category }
func (v ViewState) Page() int        { return v.page }
func (v ViewState) PageSize() int    { return v.pageSize }

// Params returns the engine parameters for the current page only.
func (v ViewState) Params() Params {
	return Params{
		Category:   v.category,
		SearchText: v.search,
		Price:      v.price,
		Sort:       v.sort,
		PageIndex:  v.page,
		PageSize:   v.pageSize,
	}
}
