package services

import (
	"sync"

	internal "github.com/deploymenttheory/go-dat/internal/services"
)

// DefaultCacheSize is the resource cache budget per container used by DefaultServiceFactory
const DefaultCacheSize = 32 * 1024 * 1024

// ServiceFactory provides a centralized way to create and manage dat services
type ServiceFactory struct {
	config           internal.LibraryConfig
	containerService ContainerService
	mu               sync.Mutex
}

// NewServiceFactory creates a new service factory. cacheSize is the
// resource cache budget in bytes of every container it opens.
func NewServiceFactory(cacheSize int, verifyMagic bool) *ServiceFactory {
	return &ServiceFactory{
		config: internal.LibraryConfig{CacheSize: cacheSize, VerifyMagic: verifyMagic},
	}
}

// ContainerService returns the container service, creating it on first use
func (sf *ServiceFactory) ContainerService() ContainerService {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if sf.containerService == nil {
		sf.containerService = NewContainerService(sf.config)
	}
	return sf.containerService
}

// IsInitialized returns whether the container service has been created
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.containerService != nil
}

// Shutdown closes every container opened through the factory
func (sf *ServiceFactory) Shutdown() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if sf.containerService == nil {
		return nil
	}

	err := sf.containerService.Close()
	sf.containerService = nil
	return err
}

// DefaultServiceFactory is the default global service factory instance
var DefaultServiceFactory = NewServiceFactory(DefaultCacheSize, false)

// GetContainerService returns the default container service
func GetContainerService() ContainerService {
	return DefaultServiceFactory.ContainerService()
}

// ShutdownServices shuts down all services using the default factory
func ShutdownServices() error {
	return DefaultServiceFactory.Shutdown()
}
