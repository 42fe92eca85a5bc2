package handlers

import (
	"errors"
	"net/http"

	"fundilink/database/repository"
	providerRepo "fundilink/database/repository/provider"
	"fundilink/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes the thin provider read endpoints clients use when
// rendering candidates.
type ProviderHandler struct {
	Repo repository.ProviderRepository
}

func NewProviderHandler(repo repository.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

// GetProviderByIDHandler returns a provider's public profile.
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	id := c.Param("id")
	provider, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "provider not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}
