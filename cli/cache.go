// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/kvcache"
	"github.com/absmach/kvcache/pkg/uuid"
)

// Keep cache handle in global var.
var (
	cache      kvcache.Cache
	idProvider uuid.IDProvider = uuid.New()
)

// SetCache sets the cache instance used by commands.
func SetCache(c kvcache.Cache) {
	cache = c
}

// SetIDProvider sets the generator of random keys.
func SetIDProvider(idp uuid.IDProvider) {
	idProvider = idp
}
