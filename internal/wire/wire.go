// Package wire provides dependency injection for the todo application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/todo/internal/adapters/cli"
	"github.com/example/todo/internal/adapters/httpapi"
	"github.com/example/todo/internal/adapters/sqlite"
	"github.com/example/todo/internal/app"
	"github.com/example/todo/internal/db"
	"github.com/example/todo/internal/ports/primary"
)

var (
	todoService  primary.TodoService
	ownerService primary.OwnerService
	once         sync.Once
)

// TodoService returns the singleton TodoService instance.
func TodoService() primary.TodoService {
	once.Do(initServices)
	return todoService
}

// OwnerService returns the singleton OwnerService instance.
func OwnerService() primary.OwnerService {
	once.Do(initServices)
	return ownerService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) with the injected DB
	todoRepo := sqlite.NewTodoRepository(database)
	ownerRepo := sqlite.NewOwnerRepository(database)

	// Create services (primary ports implementation)
	todoService = app.NewTodoService(todoRepo, ownerRepo)
	ownerService = app.NewOwnerService(ownerRepo)
}

// TodoAdapter returns a new TodoAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TodoAdapter() *cliadapter.TodoAdapter {
	return TodoAdapterWithOutput(os.Stdout)
}

// TodoAdapterWithOutput returns a new TodoAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func TodoAdapterWithOutput(out io.Writer) *cliadapter.TodoAdapter {
	once.Do(initServices)
	return cliadapter.NewTodoAdapter(todoService, out)
}

// OwnerAdapter returns a new OwnerAdapter writing to stdout.
func OwnerAdapter() *cliadapter.OwnerAdapter {
	return OwnerAdapterWithOutput(os.Stdout)
}

// OwnerAdapterWithOutput returns a new OwnerAdapter writing to the given output.
func OwnerAdapterWithOutput(out io.Writer) *cliadapter.OwnerAdapter {
	once.Do(initServices)
	return cliadapter.NewOwnerAdapter(ownerService, out)
}

// APIServer returns the HTTP API server backed by the singleton services.
func APIServer() *httpapi.Server {
	once.Do(initServices)
	return httpapi.NewServer(todoService, ownerService, nil)
}
