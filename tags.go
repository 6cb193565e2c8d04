package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/bogem/id3v2/v2"
)

const commentLanguage = "eng"

// Apply writes the overrides into every named file in dir, saving each file
// before moving on. A bad cover stops the pass at the first file; files
// saved before it keep their tags.
func (o TagOverrides) Apply(dir string, files []string) error {
	var (
		cover       id3v2.PictureFrame
		coverLoaded bool
	)

	for _, name := range files {
		tag, err := id3v2.Open(
			filepath.Join(dir, name),
			id3v2.Options{Parse: true},
		)
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}

		if o.TitleFromName {
			tag.SetTitle(stripExtension(name))
		}
		if o.Album != "" {
			tag.SetAlbum(o.Album)
		}
		if o.Artist != "" {
			tag.SetArtist(o.Artist)
		}
		if o.Comment != "" {
			tag.DeleteFrames(tag.CommonID("Comments"))
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding: id3v2.EncodingUTF8,
				Language: commentLanguage,
				Text:     o.Comment,
			})
		}
		if o.Cover != "" {
			if !coverLoaded {
				cover, err = LoadCover(o.Cover, o.SquareCover)
				if err != nil {
					closeTag(tag)
					return err
				}
				coverLoaded = true
			}
			tag.DeleteFrames(tag.CommonID("Attached picture"))
			tag.AddAttachedPicture(cover)
		}

		err = tag.Save()
		closeTag(tag)
		if err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}

func closeTag(tag *id3v2.Tag) {
	if err := tag.Close(); err != nil {
		log.Println(err)
	}
}
