package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

var ErrNoTargets = errors.New("at least one video, playlist or channel is required")

// TagOverrides holds the tag values written to every file created by a run.
// Empty strings mean the tag is left alone.
type TagOverrides struct {
	TitleFromName bool
	Album         string
	Artist        string
	Comment       string
	Cover         string // this is a url or filename
	SquareCover   bool
}

// Request is the validated command line.
type Request struct {
	Targets   []string
	Dir       string
	Index     bool // reserved, nothing reads it
	AssumeYes bool
	Verbose   bool
	Overrides TagOverrides
}

// ParseOptions parses args (without the program name). pflag.ErrHelp is
// returned when -h/--help was given.
func ParseOptions(name string, args []string, output io.Writer) (Request, error) {
	var req Request

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(output, "usage:\n%s [flags] TARGET [TARGET...]\n\nflags:\n", name)
		fs.PrintDefaults()
	}

	fs.StringVarP(&req.Dir, "dir", "d", "", "output directory (default: current directory)")
	fs.BoolVarP(&req.Index, "index", "i", false, "reserved")
	fs.BoolVarP(&req.Overrides.TitleFromName, "title", "t", false, "set the title tag from the file name")
	fs.StringVarP(&req.Overrides.Album, "album", "a", "", "set the album tag")
	fs.StringVarP(&req.Overrides.Artist, "artist", "A", "", "set the artist tag")
	fs.StringVarP(&req.Overrides.Cover, "cover", "c", "", "embed a cover image (file or http(s) url)")
	fs.StringVarP(&req.Overrides.Comment, "message", "m", "", "set the comment tag")
	fs.BoolVarP(&req.Overrides.SquareCover, "square", "s", false, "crop the cover to a centered square")
	fs.BoolVarP(&req.AssumeYes, "yes", "y", false, "create a missing output directory without asking")
	fs.BoolVarP(&req.Verbose, "verbose", "v", false, "show yt-dlp output")

	if err := fs.Parse(args); err != nil {
		return Request{}, err
	}

	req.Targets = fs.Args()
	if len(req.Targets) == 0 {
		fs.Usage()
		return Request{}, ErrNoTargets
	}
	return req, nil
}
