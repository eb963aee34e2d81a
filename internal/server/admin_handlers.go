package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/admin/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}

// RunReconciliation handles POST /api/admin/reconcile. It sweeps every
// circle's member count synchronously and reports what was repaired.
func (s *Server) RunReconciliation(c *fiber.Ctx) error {
	stats, err := s.reconciler.ReconcileAll(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"scanned":     stats.Scanned,
		"corrected":   stats.Corrected,
		"duration_ms": stats.Duration.Milliseconds(),
	})
}
