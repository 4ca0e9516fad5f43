// Package eal is the application-facing layer over the mode engine and the
// DRBGs. Contexts carry an id for log correlation and reject calls made out
// of order.
package eal
