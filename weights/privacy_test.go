package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureIsActivated(t *testing.T) {
	const threshold = 10

	for name, w := range newBackends(testLength, testStrideShift) {
		t.Run(name, func(t *testing.T) {
			w.PrivacyActivationThreshold(threshold)

			const feature = 0
			for tag := uint64(0); tag < threshold; tag++ {
				w.SetTag(feature, tag)
				w.At(feature)
			}

			assert.True(t, w.IsActivated(feature))
		})
	}
}

func TestFeatureNotActivatedBelowThreshold(t *testing.T) {
	const threshold = 10

	for name, w := range newBackends(testLength, testStrideShift) {
		t.Run(name, func(t *testing.T) {
			w.PrivacyActivationThreshold(threshold)

			const feature = 0
			for tag := uint64(0); tag < threshold-1; tag++ {
				w.SetTag(feature, tag)
				w.At(feature)
			}

			assert.False(t, w.IsActivated(feature))
		})
	}
}

func TestFeatureNotActivatedWithoutThreshold(t *testing.T) {
	for name, w := range newBackends(testLength, testStrideShift) {
		t.Run(name, func(t *testing.T) {
			const feature = 0
			for tag := uint64(0); tag < 10; tag++ {
				w.SetTag(feature, tag)
				w.At(feature)
			}

			assert.False(t, w.IsActivated(feature))

			// Tags recorded before the threshold existed must not
			// retroactively count.
			w.PrivacyActivationThreshold(10)
			assert.False(t, w.IsActivated(feature))
		})
	}
}

func TestDuplicateTagsDoNotDoubleCount(t *testing.T) {
	const threshold = 10

	for name, w := range newBackends(testLength, testStrideShift) {
		t.Run(name, func(t *testing.T) {
			w.PrivacyActivationThreshold(threshold)

			const feature = 0
			for i := 0; i < threshold; i++ {
				w.SetTag(feature, 42) // one distinct tag, recorded many times
			}

			assert.False(t, w.IsActivated(feature))
		})
	}
}

func TestUntaggedFeatureNeverActivated(t *testing.T) {
	for name, w := range newBackends(testLength, testStrideShift) {
		t.Run(name, func(t *testing.T) {
			w.PrivacyActivationThreshold(0)
			assert.False(t, w.IsActivated(5), "untagged feature must stay inactive regardless of threshold")
		})
	}
}
