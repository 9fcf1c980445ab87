// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package testsutil

import (
	"fmt"
	"testing"

	"github.com/absmach/kvcache/pkg/uuid"
	"github.com/stretchr/testify/require"
)

// GenerateUUID returns a random UUID, failing the test on error.
func GenerateUUID(t *testing.T) string {
	idProvider := uuid.New()
	id, err := idProvider.ID()
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	return id
}

// GenerateKey returns a random cache key namespaced under prefix.
func GenerateKey(t *testing.T, prefix string) string {
	return fmt.Sprintf("%s:%s", prefix, GenerateUUID(t))
}
