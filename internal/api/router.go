package api

import (
	"go-import-pipeline/internal/api/handler"
	"go-import-pipeline/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/imports", h.CreateImport)
	r.GET("/api/v1/imports", h.ListImports)
	// More specific routes first
	r.GET("/api/v1/imports/*/errors", h.GetImportErrors)
	r.POST("/api/v1/imports/*/mapping", h.ConfirmMapping)
	r.POST("/api/v1/imports/*/keys", h.ConfirmKeys)
	r.POST("/api/v1/imports/*/cancel", h.CancelImport)
	// Generic import route last
	r.GET("/api/v1/imports/*", h.GetImport)

	r.GET("/api/v1/transforms", h.ListTransforms)
	r.GET("/api/v1/entities", h.ListEntities)
}
