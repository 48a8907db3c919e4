package domain

// Category описывает категорию продукта.
// Категории заполняются миграцией и в этом приложении только читаются.
type Category struct {
	ID   int64
	Name string
}

func NewCategory(id int64, name string) *Category {
	return &Category{
		ID:   id,
		Name: name,
	}
}
