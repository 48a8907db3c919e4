package domain

// Photo описывает файл фотографии продукта в хранилище.
// Path — относительный путь (или ключ объекта), по которому файл
// доступен из Product.Photo.
type Photo struct {
	ID          string // uuid
	Path        string // <uuid><ext>
	Data        []byte
	Size        int64
	ContentType string // Example: "image/png"
}

func NewPhoto(id, path string, data []byte, size int64, contentType string) *Photo {
	return &Photo{
		ID:          id,
		Path:        path,
		Data:        data,
		Size:        size,
		ContentType: contentType,
	}
}
