//go:build integration

package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	sharedContainer     *MongoDBContainer
	sharedContainerErr  error
	sharedContainerOnce sync.Once
)

// GetSharedMongoDB starts the package wide container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedContainerOnce.Do(func() {
		sharedContainer, sharedContainerErr = SetupMongoDB(ctx)
	})
	return sharedContainer, sharedContainerErr
}

// SetupTestMainWithMongoDB runs m against a shared container and returns the exit code.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if sharedContainer != nil {
		if err := sharedContainer.Cleanup(ctx); err != nil {
			_, _ = os.Stderr.WriteString("warning: " + err.Error() + "\n")
		}
	}
	return code
}

// GetSharedContainerURI returns the shared container URI. It panics outside SetupTestMainWithMongoDB.
func GetSharedContainerURI() string {
	if sharedContainer == nil {
		panic("shared MongoDB container not initialized - call SetupTestMainWithMongoDB from TestMain")
	}
	return sharedContainer.URI
}

// SanitizeDBName turns a test name into a unique MongoDB database name. Characters MongoDB
// rejects become underscores and the result stays under the 64 byte limit.
func SanitizeDBName(testName string) string {
	var b strings.Builder
	for _, r := range testName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= 50 {
			break
		}
	}
	return b.String() + "_" + strconv.FormatInt(time.Now().UnixNano()%1000000, 10)
}
