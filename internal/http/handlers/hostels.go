package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/hostels
func (a API) ListHostels(c *gin.Context) {
	page, limit := pageParams(c)
	repo := repositories.HostelRepository{}
	list, total, err := repo.List(page, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load hostels", err)
		return
	}
	if list == nil {
		list = []models.Hostel{}
	}
	RespondList(c, list, domain.NewPagination(page, limit, total))
}

// GET /api/hostels/:id
func (a API) GetHostel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.HostelRepository{}
	h, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondDomainError(c, domain.NotFoundError{Resource: "hostel", Err: err})
		} else {
			RespondError(c, http.StatusInternalServerError, "failed to load hostel", err)
		}
		return
	}
	RespondData(c, http.StatusOK, h)
}

// GET /api/hostels/:id/rooms
func (a API) ListRooms(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.HostelRepository{}
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondDomainError(c, domain.NotFoundError{Resource: "hostel", Err: err})
		} else {
			RespondError(c, http.StatusInternalServerError, "failed to load hostel", err)
		}
		return
	}
	rooms, err := repo.ListRooms(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load rooms", err)
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	RespondData(c, http.StatusOK, rooms)
}
