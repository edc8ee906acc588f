package platform

import (
	"context"

	"github.com/cgutt/surveykit/pkg/adapters/folder"
	"github.com/cgutt/surveykit/pkg/adapters/masterfile"
	"github.com/cgutt/surveykit/pkg/core"
	"github.com/cgutt/surveykit/pkg/git"
)

// New creates a workbench Service rooted at the given directory.
//
//	svc, err := surveykit.New("./studies", surveykit.WithAutoInit(true))
func New(root string, opts ...Option) (*core.Service, error) {
	repo, err := Init(root, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}

// Init initializes the folder adapter explicitly.
func Init(root string, opts ...Option) (core.Folders, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.folders != nil {
		return o.folders, nil
	}

	autoInit, _ := o.config["auto_init"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	repo := folder.NewRepository(folder.Config{
		Path:         root,
		AutoInit:     autoInit,
		MustExist:    mustExist,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// OpenMasterfile opens a masterfile backend detected from the path's
// extension, optionally wrapped with git versioning.
func OpenMasterfile(path string, opts ...Option) (core.Masterfile, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m, err := masterfile.Open(path, o.logger)
	if err != nil {
		return nil, err
	}

	if versioned, _ := o.config["versioned"].(bool); versioned {
		vm, err := git.NewVersioned(m, o.logger)
		if err != nil {
			m.Close()
			return nil, err
		}
		return vm, nil
	}
	return m, nil
}
