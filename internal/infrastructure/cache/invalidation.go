package cache

// Cache keys used by the storefront read paths. Single-entity keys are
// prefixed so scope-wide invalidation can match them.
const (
	KeyProducts      = "products"
	KeyProductPrefix = "product:"
	KeyReviews       = "reviews"
	KeyReviewsPrefix = "reviews:"
	KeyOrders        = "orders"
	KeyAnalytics     = "analytics"
	KeySettings      = "settings"
)

// ProductKey returns the cache key for a single product.
func ProductKey(id string) string { return KeyProductPrefix + id }

// ReviewsKey returns the cache key for one product's review list.
func ReviewsKey(productID string) string { return KeyReviewsPrefix + productID }

// Invalidator exposes the named invalidation operations write paths call
// after mutating underlying data. Single-entity operations also drop the
// related collection entry: the aggregate is stale the moment one of its
// members changes, and skipping that fan-out serves stale list views after
// single-item edits.
type Invalidator struct {
	cache *Cache
}

func NewInvalidator(c *Cache) *Invalidator {
	return &Invalidator{cache: c}
}

// Products drops the product list and every cached single product.
func (i *Invalidator) Products() {
	i.cache.Delete(KeyProducts)
	i.cache.DeletePrefix(KeyProductPrefix)
}

// Product drops one product's entry plus the aggregate list entry.
func (i *Invalidator) Product(id string) {
	i.cache.Delete(ProductKey(id), KeyProducts)
}

// Reviews drops review entries. With a product ID it drops that product's
// reviews plus the aggregate; with an empty ID it drops every review entry.
func (i *Invalidator) Reviews(productID string) {
	if productID == "" {
		i.cache.Delete(KeyReviews)
		i.cache.DeletePrefix(KeyReviewsPrefix)
		return
	}
	i.cache.Delete(ReviewsKey(productID), KeyReviews)
}

func (i *Invalidator) Orders() {
	i.cache.Delete(KeyOrders)
	// Order mutations feed the analytics rollup.
	i.cache.Delete(KeyAnalytics)
}

func (i *Invalidator) Analytics() {
	i.cache.Delete(KeyAnalytics)
}

func (i *Invalidator) Settings() {
	i.cache.Delete(KeySettings)
}

// All drops every cached entry.
func (i *Invalidator) All() {
	i.cache.Clear()
}
