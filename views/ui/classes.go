package ui

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonIcon      ButtonVariant = "icon"
)

const buttonBase = "inline-flex items-center justify-center gap-2 rounded-lg px-4 py-2 text-sm font-medium " +
	"transition-colors focus:outline-none focus-visible:ring-2 focus-visible:ring-indigo-500 disabled:opacity-50"

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-indigo-600 text-white hover:bg-indigo-700",
	ButtonSecondary: "border border-slate-300 bg-white text-slate-700 hover:bg-slate-50",
	ButtonGhost:     "bg-transparent text-slate-600 hover:bg-slate-100",
	ButtonIcon:      "h-10 w-10 rounded-full p-0 bg-white/90 text-slate-700 shadow hover:bg-white",
}

// Button returns the classes for a button variant. Later classes win over
// earlier conflicting ones.
func Button(variant ButtonVariant, extra ...string) string {
	return twmerge.Merge(append([]string{buttonBase, buttonVariants[variant]}, extra...)...)
}

// Card returns the classes of a content card
func Card(extra ...string) string {
	return twmerge.Merge(append([]string{"overflow-hidden rounded-xl border border-slate-200 bg-white shadow-sm"}, extra...)...)
}

// Badge returns the classes of a small pill label
func Badge(extra ...string) string {
	return twmerge.Merge(append([]string{"inline-block rounded-full bg-indigo-50 px-2.5 py-0.5 text-xs font-medium text-indigo-700"}, extra...)...)
}

// Input returns the classes of a form control, highlighting invalid ones
func Input(invalid bool) string {
	base := "block w-full rounded-lg border border-slate-300 px-3 py-2 text-sm focus:border-indigo-500 focus:ring-indigo-500"
	if invalid {
		return twmerge.Merge(base, "border-red-500 focus:border-red-500 focus:ring-red-500")
	}
	return base
}

// NavLink returns the classes of a navigation entry
func NavLink(active, mobile bool) string {
	classes := []string{"rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:text-indigo-600"}
	if mobile {
		classes = append(classes, "block text-base")
	}
	if active {
		classes = append(classes, "text-indigo-600 bg-indigo-50")
	}
	return twmerge.Merge(classes...)
}

// Alert returns the classes of an inline notice
func Alert(kind string) string {
	base := "rounded-lg border px-4 py-3 text-sm"
	switch kind {
	case "error":
		return twmerge.Merge(base, "border-red-200 bg-red-50 text-red-700")
	case "success":
		return twmerge.Merge(base, "border-green-200 bg-green-50 text-green-700")
	default:
		return twmerge.Merge(base, "border-slate-200 bg-slate-50 text-slate-700")
	}
}
