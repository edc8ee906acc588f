package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	FoldersRoot string `json:"folders_root"`
	FoldersType string `json:"folders_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	foldersType := "folders"
	if comp, ok := s.folders.(introspection.Component); ok {
		foldersType = comp.ComponentType()
	}

	return ServiceState{
		FoldersRoot: s.folders.Root(),
		FoldersType: foldersType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
