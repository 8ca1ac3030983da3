package factory

import (
	"time"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/api"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/config"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/pipeline"
	"github.com/gaugeboard/gauge-dashboard/services/dashboard/source"
)

type componentsHandler struct {
	source pipeline.Source
	pipe   Pipeline
	server Server
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	sourceToken string,
	cfg config.Config,
) (*componentsHandler, error) {
	src := source.NewHTTPSource(cfg.MetricsURL, sourceToken, time.Duration(cfg.FetchTimeoutInSeconds)*time.Second)

	pipe, err := pipeline.NewMetricPipeline(src, time.Duration(cfg.RefreshIntervalInSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ListenAddress:  cfg.ListenAddress,
		StaticDir:      cfg.StaticDir,
		Pipeline:       pipe,
		GeneralHandler: api.CORSMiddleware,
	}

	webServer, err := api.NewServer(serverArgs)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		source: src,
		pipe:   pipe,
		server: webServer,
	}, nil
}

// GetSource returns the metric source component
func (ch *componentsHandler) GetSource() pipeline.Source {
	return ch.source
}

// GetPipeline returns the pipeline component
func (ch *componentsHandler) GetPipeline() Pipeline {
	return ch.pipe
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.pipe.Start()
	ch.server.Start()
}

// Close closes the inner components: the refresh timer first, then the web server
func (ch *componentsHandler) Close() {
	ch.pipe.Close()
	_ = ch.server.Close()
}
