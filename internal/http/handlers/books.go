package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

type bookPayload struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Genre         string `json:"genre"`
	ISBN          string `json:"isbn" binding:"required"`
	PublishedYear int    `json:"published_year"`
	TotalCopies   int    `json:"total_copies" binding:"required"`
}

func (p bookPayload) toModel() models.Book {
	return models.Book{
		Title:         utils.NormalizeSpace(p.Title),
		Author:        utils.NormalizeSpace(p.Author),
		Genre:         strings.TrimSpace(p.Genre),
		ISBN:          strings.TrimSpace(p.ISBN),
		PublishedYear: p.PublishedYear,
		TotalCopies:   p.TotalCopies,
	}
}

// GET /api/books
func GetBooks(c *gin.Context) {
	books, err := repositories.BookRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// GET /api/books/:id
func GetBookByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.BookRepository{}
	book, err := repo.GetByID(intconfig.DB, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// POST /api/books (admin)
func CreateBook(c *gin.Context) {
	var p bookPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if p.TotalCopies <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "total_copies must be positive", nil)
		return
	}

	repo := repositories.BookRepository{}
	id, err := repo.Create(p.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	book, err := repo.GetByID(intconfig.DB, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"book": book})
}

// PUT /api/books/:id (admin)
func UpdateBook(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p bookPayload
	if !BindJSONOrError(c, &p) {
		return
	}

	repo := repositories.BookRepository{}
	if err := repo.Update(id, p.toModel()); err != nil {
		RespondDomainError(c, err)
		return
	}

	book, err := repo.GetByID(intconfig.DB, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// DELETE /api/books/:id (admin)
func DeleteBook(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.BookRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}
