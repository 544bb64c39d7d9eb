package model

// Package model defines data structures shared by the loader and the UI:
// cover collections, their items, and fetch jobs with their status enums.
// Structures are plain values updated through explicit transitions.
