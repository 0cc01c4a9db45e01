// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache is the client side of the aclAdmin cache endpoints: the entry
// model and a service that lists caches or fetches one by id. Despite the
// name nothing here caches anything; every call goes to the server.
package cache
