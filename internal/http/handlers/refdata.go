package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketlane/eventwizard/internal/refdata"
)

type RefdataHandler struct {
	loader *refdata.Loader
	log    *slog.Logger
}

func NewRefdataHandler(loader *refdata.Loader, log *slog.Logger) *RefdataHandler {
	return &RefdataHandler{loader: loader, log: log}
}

// Categories returns the category tree. With ?categoryId= (and optionally
// ?eventType=) set, it returns just the matching subcategories instead, which
// is what the basic-info step's dependent dropdown consumes.
func (h *RefdataHandler) Categories(ctx *gin.Context) {
	cats, err := h.loader.Categories(ctx.Request.Context())
	if err != nil {
		h.log.Error("load categories", "err", err)
		RespondUpstream(ctx, "Could not load categories")
		return
	}

	if categoryID := ctx.Query("categoryId"); categoryID != "" {
		ctx.JSON(http.StatusOK, gin.H{
			"subcategories": refdata.FilterSubcategories(cats, categoryID, ctx.Query("eventType")),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *RefdataHandler) EventTypes(ctx *gin.Context) {
	types, err := h.loader.EventTypes(ctx.Request.Context())
	if err != nil {
		h.log.Error("load event types", "err", err)
		RespondUpstream(ctx, "Could not load event types")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"eventTypes": types})
}
