package main

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var urlRegex = regexp.MustCompile(`^https?:\/\/`)

// CoverError reports a cover that could not be embedded.
type CoverError struct {
	Path string
	Err  error
}

func (e *CoverError) Error() string {
	return fmt.Sprintf("cover %s: %v", e.Path, e.Err)
}

func (e *CoverError) Unwrap() error { return e.Err }

func readCover(cover string) ([]byte, error) {
	var coverSource io.Reader

	if urlRegex.MatchString(cover) {
		res, err := http.Get(cover)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", res.Status)
		}
		coverSource = res.Body
	} else {
		f, err := os.Open(cover)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		coverSource = f
	}

	return io.ReadAll(coverSource)
}

func CropImage(img image.Image) image.Image {
	x := img.Bounds().Dx()
	y := img.Bounds().Dy()
	side := x
	if y < x {
		side = y
	}
	return imaging.CropCenter(img, side, side)
}

// LoadCover reads a cover from a file or an http(s) url and turns it into a
// front cover frame. Anything that is not a decodable image is rejected.
func LoadCover(cover string, square bool) (id3v2.PictureFrame, error) {
	contents, err := readCover(cover)
	if err != nil {
		return id3v2.PictureFrame{}, &CoverError{Path: cover, Err: err}
	}

	mimestring := mimetype.Detect(contents).String()
	if !strings.HasPrefix(mimestring, "image") {
		return id3v2.PictureFrame{}, &CoverError{
			Path: cover,
			Err:  fmt.Errorf("invalid image format %s", mimestring),
		}
	}

	img, _, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return id3v2.PictureFrame{}, &CoverError{Path: cover, Err: err}
	}

	if square {
		buf := bytes.NewBuffer(nil)
		if err := imaging.Encode(buf, CropImage(img), imaging.PNG); err != nil {
			return id3v2.PictureFrame{}, &CoverError{Path: cover, Err: err}
		}
		contents = buf.Bytes()
		mimestring = "image/png"
	}

	return id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mimestring,
		Picture:     contents,
		PictureType: id3v2.PTFrontCover,
	}, nil
}
