package mockapi

import (
	"log/slog"

	"github.com/siegeai/cloudmock/discover"
	"github.com/siegeai/cloudmock/extract"
)

// LoadServices discovers and extracts the description documents of each service in
// order and adds their endpoints. A service that fails discovery is logged and
// skipped. It returns the number of routes added.
func (r *Registry) LoadServices(specsPath string, services ...string) int {
	total := 0
	for _, service := range services {
		root := discover.ServiceDir(specsPath, service)
		files, err := discover.Files(root)
		if err != nil {
			slog.Warn("could not discover spec files", "service", service, "path", root, "err", err)
			continue
		}
		if len(files) == 0 {
			slog.Warn("no spec files found", "service", service, "path", root)
			continue
		}

		eps := extract.ExtractAll(files)
		n := r.Add(service, eps...)
		slog.Info("loaded service", "service", service, "files", len(files), "endpoints", len(eps), "routes", n)
		total += n
	}
	return total
}
