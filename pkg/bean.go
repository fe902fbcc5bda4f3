package pkg

import (
	"fmt"

	"github.com/devtron-labs/chart-builder/pkg/chart"
)

// Chart is everything needed to generate and release one chart.
type Chart struct {
	Info    *chart.Info
	Objects []chart.Object
}

func (c *Chart) Name() string {
	if c == nil || c.Info == nil {
		return ""
	}
	return c.Info.Name
}

type NotInstalledError struct {
	Name string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("chart %q is not installed", e.Name)
}
