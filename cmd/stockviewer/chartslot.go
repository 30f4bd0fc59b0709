package main

import (
	fyne "fyne.io/fyne/v2"
)

// surface is the container the chart lives in. *fyne.Container satisfies it.
type surface interface {
	Add(fyne.CanvasObject)
	Remove(fyne.CanvasObject)
}

// chartSlot holds at most one chart object on its surface. Replacing the chart removes
// the previous object before the new one is added.
type chartSlot struct {
	surface   surface
	current   fyne.CanvasObject
	destroyed int
}

func newChartSlot(s surface) *chartSlot { return &chartSlot{surface: s} }

// Replace swaps the displayed chart for obj. A nil obj just clears the slot.
func (c *chartSlot) Replace(obj fyne.CanvasObject) {
	if c.current != nil {
		c.surface.Remove(c.current)
		c.current = nil
		c.destroyed++
	}
	if obj == nil {
		return
	}
	c.surface.Add(obj)
	c.current = obj
}

// Current returns the displayed chart object, or nil.
func (c *chartSlot) Current() fyne.CanvasObject { return c.current }

// Destroyed counts charts removed so far.
func (c *chartSlot) Destroyed() int { return c.destroyed }
