package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

// Icon renders the tray icon (red shield with a white exclamation mark) at
// the given pixel size. On Windows the PNG is wrapped in a single-image ICO
// container, which the shell accepts since Vista.
func Icon(size int) []byte {
	if size <= 0 {
		size = 64
	}
	data := renderPNG(size)
	if runtime.GOOS == "windows" {
		return wrapICO(data, size)
	}
	return data
}

func renderPNG(size int) []byte {
	w, h := float64(size), float64(size)
	red := color.RGBA{R: 200, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	shield := [][2]float64{
		{w / 2, 5}, {w - 5, 20}, {w - 10, h - 10},
		{w / 2, h - 5}, {10, h - 10}, {5, 20},
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			switch {
			case inRect(fx, fy, w/2-5, h/4, w/2+5, h/2+10),
				inEllipse(fx, fy, w/2-5, h/2+15, w/2+5, h/2+25):
				img.SetRGBA(x, y, white)
			case inPolygon(fx, fy, shield):
				img.SetRGBA(x, y, red)
			}
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func inRect(x, y, x0, y0, x1, y1 float64) bool {
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}

func inEllipse(x, y, x0, y0, x1, y1 float64) bool {
	cx, cy := (x0+x1)/2, (y0+y1)/2
	rx, ry := (x1-x0)/2, (y1-y0)/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx, dy := (x-cx)/rx, (y-cy)/ry
	return dx*dx+dy*dy <= 1
}

// Even-odd ray cast.
func inPolygon(x, y float64, poly [][2]float64) bool {
	in := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		xi, yi := poly[i][0], poly[i][1]
		xj, yj := poly[j][0], poly[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
		j = i
	}
	return in
}

// wrapICO puts a PNG into a one-entry ICO container: 6-byte ICONDIR, one
// 16-byte ICONDIRENTRY, then the PNG bytes verbatim.
func wrapICO(pngData []byte, size int) []byte {
	dim := byte(size)
	if size >= 256 {
		dim = 0 // 0 means 256 in ICO entries
	}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // type: icon
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // image count
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))            // planes
	_ = binary.Write(buf, binary.LittleEndian, uint16(32))           // bpp
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(pngData))) // data size
	_ = binary.Write(buf, binary.LittleEndian, uint32(6+16))         // data offset
	buf.Write(pngData)
	return buf.Bytes()
}
