// Package irisviz renders summary charts for the Iris flower dataset.
//
// Usage:
//
//	table, err := dataset.Load("Iris.csv")
//	st := style.Resolve(style.DefaultPreferences())
//	err = charts.Run(table, st, os.Stdout, charts.WithOutputDir("."))
//
// The dataset package loads and normalizes the CSV, the engine computes
// aggregates and render-ready chart descriptions, and the render package
// draws them to PNG files. Everything runs locally and synchronously.
package irisviz
