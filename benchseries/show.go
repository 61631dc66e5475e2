// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// Show displays img in a window titled title and blocks until the
// user closes it. It must be called from the main goroutine, at most
// once per process.
func Show(title string, img image.Image) {
	a := app.New()
	w := a.NewWindow(title)

	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	c.SetMinSize(fyne.NewSize(float32(b.Dx())/4, float32(b.Dy())/4))

	w.SetContent(c)
	w.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	w.ShowAndRun()
}
