package version

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/desdemona/internal/models"
)

var Version = models.VersionResponse{Commit: "unknown"}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Version.Commit = setting.Value
		}
	}
}

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
