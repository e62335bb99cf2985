package main

// @title Star Wars Blog API
// @version 1.0
// @description Read-only Star Wars catalog (people, planets, starships) with per-user favorites.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:3000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Catalog
// @tag.description Characters, planets and starships

// @tag.name Users
// @tag.description Blog readers

// @tag.name Favorites
// @tag.description Per-user favorites
