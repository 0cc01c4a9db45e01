// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package view

// DashboardService backs the dashboard view.
type DashboardService struct{}

// Test echoes its argument.
func (DashboardService) Test(arg string) string {
	return arg
}

// DashboardController holds the dashboard's view state.
type DashboardController struct {
	CheckString string
}

func NewDashboardController(svc DashboardService) *DashboardController {
	return &DashboardController{CheckString: svc.Test("HI")}
}
