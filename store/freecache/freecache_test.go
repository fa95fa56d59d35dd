package freecache

import (
	"testing"

	"github.com/cachekit/cachesemantics/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Exercise(t, New(512*1024))
}
