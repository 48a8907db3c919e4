package main

import (
	"github.com/DRSN-tech/catalog-backend/internal/app"
	"github.com/joho/godotenv"
)

//	@title			Catalog Backend API
//	@version		1.0
//	@description	Сервис каталога товаров: поиск, категории, фото.
//	@BasePath		/api/v1

func main() {
	// .env опционален: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	app.Run()
}
