package main

//go:generate swag init -g cmd/api/docs.go -o docs

// @title           Risk Manager API
// @version         1.0
// @description     Trading risk dashboard: profiles, journal, derived metrics and spreadsheet sync.
// @BasePath        /api/v1
