package table

// Default dimensions, in pixels.
const (
	DefaultRowHeight       float32 = 24
	DefaultHeaderRowHeight float32 = 24
)

// Option configures a Table at construction time.
type Option func(*config)

// config holds the table-level settings gathered from options.
type config struct {
	rowHeight    float32
	headerRowH   float32
	prefetchRows int64
	prefetchPx   float32
	autoSize     AutoSizeMode
	header       []HeaderNode
}

func defaultConfig() config {
	return config{
		rowHeight:  DefaultRowHeight,
		headerRowH: DefaultHeaderRowHeight,
	}
}

// applyOptions applies all options over the defaults.
func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithRowHeight sets the baseline height for rows without an explicit
// height. Must be positive.
func WithRowHeight(h float32) Option {
	return func(c *config) { c.rowHeight = h }
}

// WithHeaderRowHeight sets the height of each header row. Must be positive.
func WithHeaderRowHeight(h float32) Option {
	return func(c *config) { c.headerRowH = h }
}

// WithHeader installs a header hierarchy, one node per top-level column or
// group. Equivalent to calling SetHeader after New.
func WithHeader(nodes ...HeaderNode) Option {
	return func(c *config) { c.header = nodes }
}

// WithPrefetchRows widens the prefetch range by n rows on each side of the
// visible range. Negative values are treated as zero.
func WithPrefetchRows(n int) Option {
	return func(c *config) { c.prefetchRows = int64(n) }
}

// WithPrefetchPixels widens the prefetch range by the number of baseline
// rows covering px pixels on each side. Negative values are treated as
// zero.
func WithPrefetchPixels(px float32) Option {
	return func(c *config) { c.prefetchPx = px }
}

// WithAutoSizeMode controls when column widths are refitted to the
// viewport. The default is AutoSizeOnViewportResize.
func WithAutoSizeMode(m AutoSizeMode) Option {
	return func(c *config) { c.autoSize = m }
}
