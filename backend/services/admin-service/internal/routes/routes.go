package routes

const (
	// Health
	Health = "/health"

	// Base prefix for the secured admin sub-router
	AdminBase = "/api/v1/admin"

	// ───────────────────────────────
	// Auth
	// ───────────────────────────────
	AuthLogin  = "/api/v1/admin/auth/login"
	AuthLogout = "/api/v1/admin/auth/logout"
	AuthMe     = "/api/v1/admin/auth/me"

	// ───────────────────────────────
	// Registry + choices
	// ───────────────────────────────
	Models                = "/api/v1/admin/models"
	ModelByName           = "/api/v1/admin/models/{name}"
	ChoicesImageSizes     = "/api/v1/admin/choices/image-sizes"
	ChoicesScheduleResult = "/api/v1/admin/choices/schedule-results"

	// ───────────────────────────────
	// Articles
	// ───────────────────────────────
	Articles     = "/api/v1/admin/articles"
	ArticleByID  = "/api/v1/admin/articles/{id}"
	ArticleEdit  = "/api/v1/admin/articles/{id}/edit"
	ArticleEdits = "/api/v1/admin/articles/{id}/user-edits"

	// ───────────────────────────────
	// Authors
	// ───────────────────────────────
	Authors    = "/api/v1/admin/authors"
	AuthorByID = "/api/v1/admin/authors/{id}"

	// ───────────────────────────────
	// Taxonomy ({kind} is categories|regions|topics)
	// ───────────────────────────────
	Terms    = "/api/v1/admin/{kind:categories|regions|topics}"
	TermByID = "/api/v1/admin/{kind:categories|regions|topics}/{id}"

	// ───────────────────────────────
	// Flat pages, audit rows, snapshots
	// ───────────────────────────────
	FlatPages    = "/api/v1/admin/flatpages"
	FlatPageByID = "/api/v1/admin/flatpages/{id}"
	UserEdits    = "/api/v1/admin/user-edits"
	MostPopular  = "/api/v1/admin/most-popular"
)
