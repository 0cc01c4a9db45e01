// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"fmt"
	"time"

	"github.com/staranto/aclctl/internal/dates"
)

// seedCache describes one demo cache.
type seedCache struct {
	id      string
	name    string
	entries int
	age     time.Duration
	// started is how long before now the cache was initialized.
	started func(time.Time) time.Time
}

var seedCaches = []seedCache{
	{"aclUsers", "ACL Users", 1250, 8 * time.Hour, func(t time.Time) time.Time { return dates.AddHours(t, -3) }},
	{"aclRoles", "ACL Roles", 42, 0, func(t time.Time) time.Time { return dates.AddDate(t, -2) }},
	{"properties", "Application Properties", 318, time.Hour, func(t time.Time) time.Time { return dates.AddMinutes(t, -45) }},
	{"sessions", "Web Sessions", 9876, 5 * time.Minute, func(t time.Time) time.Time { return dates.AddSeconds(t, -90) }},
	{"menus", "Menu Items", 64, 0, func(t time.Time) time.Time { return dates.AddMonth(t, -1) }},
	{"i18n", "Message Bundles", 2048, 0, func(t time.Time) time.Time { return dates.AddYear(t, -1) }},
	{"lookups", "Lookup Codes", 731, 24 * time.Hour, func(t time.Time) time.Time { return dates.AddMilliseconds(t, -1500) }},
}

// Seed registers the demo caches with back-dated initialization times.
func Seed(reg *Registry) error {
	now := reg.now()
	for _, s := range seedCaches {
		s := s
		err := reg.register(s.id, &Cache{
			Name:   s.name,
			Age:    s.age,
			Loader: func() (map[string]string, error) { return fill(s.id, s.entries), nil },
		}, s.started(now))
		if err != nil {
			return err
		}
	}
	return nil
}

func fill(prefix string, n int) map[string]string {
	m := make(map[string]string, n)
	for i := 0; i < n; i++ {
		m[fmt.Sprintf("%s-%d", prefix, i)] = fmt.Sprintf("value %d", i)
	}
	return m
}
