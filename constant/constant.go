package constant

type contextKey string

// UserIDKey carries the authenticated admin user id in request contexts.
const UserIDKey contextKey = "user_id"

// Cache tags used by the redis repository. Mutations invalidate a tag,
// readers holding a cached result under that tag refresh on next access.
const (
	CacheTagProducts   = "products"
	CacheTagCategories = "categories"
	CacheTagPromoCodes = "promo-codes"
	CacheTagOrders     = "orders"
)
