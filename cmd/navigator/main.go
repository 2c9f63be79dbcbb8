// Command navigator is a terminal client for the community resource
// backend: chat with the AI agent, browse and search resources, edit
// the session profile, and read the impact dashboard.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/communitynav/navigator/config"
	"github.com/communitynav/navigator/internal/analytics"
	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/internal/chat"
	"github.com/communitynav/navigator/internal/geo"
	"github.com/communitynav/navigator/internal/identity"
	"github.com/communitynav/navigator/internal/resources"
	"github.com/communitynav/navigator/internal/store"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	root := &cobra.Command{
		Use:   "navigator",
		Short: "Community Resource Navigator",
		Long:  "Find shelter, food, healthcare and other community services near you.",
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default: ./navigator.yaml)")

	root.AddCommand(chatCMD(&cfgPath), resourcesCMD(&cfgPath), profileCMD(&cfgPath), dashboardCMD(&cfgPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// navigator is the composition root: config, client, services and the
// per-domain stores, constructed once per invocation and passed to the
// view controllers explicitly.
type navigator struct {
	Config *config.Config

	Chat      *store.ChatStore
	Resources *store.ResourceStore
	Profile   *store.ProfileStore

	ChatService      *chat.Service
	ResourceService  *resources.Service
	AnalyticsService *analytics.Service

	Locator geo.Locator
}

func buildNavigator(cfgPath string) (*navigator, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	ids := identity.NewManager(cfg.State.Dir)
	userID, err := ids.Load()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.API.BaseURL)
	return &navigator{
		Config:           cfg,
		Chat:             store.NewChatStore(userID, ids.Save),
		Resources:        store.NewResourceStore(),
		Profile:          store.NewProfileStore(),
		ChatService:      &chat.Service{Client: client},
		ResourceService:  &resources.Service{Client: client},
		AnalyticsService: &analytics.Service{Client: client},
		Locator:          geo.FromCoordinates(cfg.Search.Latitude, cfg.Search.Longitude),
	}, nil
}
