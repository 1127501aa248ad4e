package dtos

type AuthorRequest struct {
	Version     int64  `json:"version" validate:"gte=0"`
	Title       string `json:"title" validate:"max=20"`
	FirstNames  string `json:"first_names" validate:"required,max=200"`
	LastName    string `json:"last_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Telephone   string `json:"telephone" validate:"max=200"`
	Cell        string `json:"cell" validate:"max=200"`
	Description string `json:"description"`
}

type TermRequest struct {
	Version     int64  `json:"version" validate:"gte=0"`
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=50,slug"`
	Description string `json:"description"`
}

type FlatPageRequest struct {
	Version              int64    `json:"version" validate:"gte=0"`
	URL                  string   `json:"url" validate:"required,max=100,startswith=/,endswith=/"`
	Title                string   `json:"title" validate:"required,max=200"`
	Content              string   `json:"content"`
	Sites                []string `json:"sites" validate:"dive,required,max=100"`
	RegistrationRequired bool     `json:"registration_required"`
	TemplateName         string   `json:"template_name" validate:"max=70"`
	EnableComments       bool     `json:"enable_comments"`
}

type MostPopularRequest struct {
	ArticleList string `json:"article_list" validate:"required"`
}
