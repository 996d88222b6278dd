package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/adapters/condaenv"  //nolint:depguard // Wired in app layer
	"go.trai.ch/envsync/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/envsync/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/envsync/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/envsync/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/envsync/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/envsync/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the resolved application graph for the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.FactoryNodeID,
			condaenv.NodeID,
			fs.HasherNodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*shell.Factory](ctx)
	if err != nil {
		return nil, err
	}

	provisioner, err := graft.Dep[ports.Provisioner](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.FileHasher](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, factory, provisioner, hasher, tel, log), nil
}
