//go:build integration

// Package testutil starts the MongoDB container shared by the integration tests of a package.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is used unless MONGO_TEST_IMAGE is set.
const DefaultMongoImage = "mongo:7.0"

// maxDBNameLen leaves room for the uniqueness suffix within MongoDB's 64 byte limit.
const maxDBNameLen = 50

// MongoDBContainer is a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

var shared struct {
	once      sync.Once
	mu        sync.RWMutex
	container *MongoDBContainer
	err       error
}

// StartMongoDB runs a fresh MongoDB container.
func StartMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("MONGO_TEST_IMAGE")
	if image == "" {
		image = DefaultMongoImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start %s container: %w", image, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Terminate stops the container.
func (m *MongoDBContainer) Terminate(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}

// SharedMongoDB starts the package's container on first use and returns it afterwards.
func SharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	shared.once.Do(func() {
		c, err := StartMongoDB(ctx)
		shared.mu.Lock()
		shared.container, shared.err = c, err
		shared.mu.Unlock()
	})

	shared.mu.RLock()
	defer shared.mu.RUnlock()
	return shared.container, shared.err
}

// SetupTestMainWithMongoDB runs the package's tests against a shared container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := SharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "integration tests need docker: %v\n", err)
		return 1
	}

	code := m.Run()

	shared.mu.Lock()
	defer shared.mu.Unlock()
	if err := shared.container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	shared.container = nil
	return code
}

// GetSharedContainerURI returns the connection string of the shared container.
// It panics outside SetupTestMainWithMongoDB.
func GetSharedContainerURI() string {
	shared.mu.RLock()
	defer shared.mu.RUnlock()
	if shared.container == nil {
		panic("testutil: shared MongoDB container is not running")
	}
	return shared.container.URI
}

// SanitizeDBName turns a test name into a unique, valid MongoDB database name.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		return r
	}, testName)
	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
