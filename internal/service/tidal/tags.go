package tidal

//go:generate $MOCKGEN -source=tags.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/constants"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// Extension is the audio container extension (".flac", ".mp3", ".m4a").
	Extension string
	// Track is the track whose metadata is written.
	Track *tidal.Track
	// Album is the track's album.
	Album *tidal.Album
	// Cover contains the cover art to embed, nil to skip embedding.
	Cover *tidal.CoverData
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// extractFLACCommentResult contains the result of extracting FLAC comment metadata.
type extractFLACCommentResult struct {
	// Comment is the FLAC Vorbis comment metadata block.
	Comment *flacvorbis.MetaDataBlockVorbisComment
	// Index is the index of the comment block in the FLAC file metadata (-1 if not found).
	Index int
}

// Static error definitions for better error handling.
var (
	// ErrEmptyTrackPath indicates that the track file path is empty.
	ErrEmptyTrackPath = errors.New("track path cannot be empty")
)

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes metadata to audio files based on the provided request.
// MP4 containers are left untagged; their atom structure needs a remux
// and the files stay playable without tags.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	switch req.Extension {
	case constants.ExtensionFLAC:
		return tp.writeFLACTags(ctx, req)
	case constants.ExtensionMP3:
		return tp.writeMP3Tags(req)
	default:
		logger.Debugf(ctx, "Tagging is not supported for '%s' files, leaving '%s' untagged",
			req.Extension, req.TrackPath)

		return nil
	}
}

func (tp *TagProcessorImpl) writeFLACTags(ctx context.Context, req *WriteTagsRequest) error {
	// Parse the FLAC file.
	f, err := flac.ParseFile(filepath.Clean(req.TrackPath))
	if err != nil {
		return err
	}

	// Extract existing FLAC comments (metadata) from the file.
	commentResult, err := tp.extractFLACComment(f)
	if err != nil {
		return err
	}

	tag := commentResult.Comment

	// If no existing comments are found, create a new metadata block.
	if tag == nil {
		tag = flacvorbis.New()
	}

	// Add tags to the FLAC metadata block.
	err = tp.addFLACTags(tag, req)
	if err != nil {
		return err
	}

	// Marshal the updated metadata and update the FLAC file's metadata blocks.
	tagMeta := tag.Marshal()
	if commentResult.Index >= 0 {
		f.Meta[commentResult.Index] = &tagMeta
	} else {
		f.Meta = append(f.Meta, &tagMeta)
	}

	// Embed the cover art into the FLAC file if provided.
	tp.embedFLACCover(ctx, f, req.Cover)

	// Save the updated FLAC file.
	return f.Save(req.TrackPath)
}

func (tp *TagProcessorImpl) extractFLACComment(f *flac.File) (*extractFLACCommentResult, error) {
	// Iterate through the metadata blocks to find the Vorbis comment block.
	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}

		// Parse the Vorbis comment block.
		comment, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err == nil {
			return &extractFLACCommentResult{
				Comment: comment,
				Index:   idx,
			}, nil
		}
	}

	// Return nil comment if no Vorbis comment block is found.
	return &extractFLACCommentResult{
		Comment: nil,
		Index:   -1,
	}, nil
}

func (tp *TagProcessorImpl) addFLACTags(tag *flacvorbis.MetaDataBlockVorbisComment, req *WriteTagsRequest) error {
	track, album := req.Track, req.Album

	// Map of FLAC tag keys to their values.
	flacTags := map[string]string{
		"ALBUM":       album.Title,
		"ALBUMARTIST": albumArtistName(album, track),
		"ARTIST":      track.Artist.Name,
		"COPYRIGHT":   track.Copyright,
		"DATE":        album.ReleaseDate,
		"DISCNUMBER":  strconv.FormatInt(track.VolumeNumber, 10),
		"ISRC":        track.ISRC,
		"TITLE":       track.Title,
		"TOTALTRACKS": strconv.FormatInt(album.NumberOfTracks, 10),
		"TRACK_ID":    strconv.FormatInt(track.ID, 10),
		"TRACKNUMBER": strconv.FormatInt(track.TrackNumber, 10),
		"YEAR":        album.ReleaseYear(),
	}

	// Add each tag to the Vorbis comment block.
	for k, v := range flacTags {
		if v == "" || v == "0" {
			continue
		}

		err := tag.Add(k, v)
		if err != nil {
			return err
		}
	}

	return nil
}

func (tp *TagProcessorImpl) embedFLACCover(ctx context.Context, f *flac.File, cover *tidal.CoverData) {
	if cover == nil || len(cover.Data) == 0 {
		return
	}

	// Create a new FLAC picture block from the image data.
	picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "", cover.Data, cover.ContentType)
	if err != nil {
		logger.Errorf(ctx, "Failed to embed image to FLAC: %v", err)

		return
	}

	// Add the picture block to the FLAC file's metadata.
	pictureMeta := picture.Marshal()
	f.Meta = append(f.Meta, &pictureMeta)
}

func (tp *TagProcessorImpl) writeMP3Tags(req *WriteTagsRequest) error {
	// Open the MP3 file for writing metadata.
	//nolint:exhaustruct // ParseFrames intentionally omitted when Parse=false (parsing disabled).
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: false})
	if err != nil {
		return err
	}

	defer tag.Close()

	// Add metadata tags to the MP3 file.
	tp.addMP3Tags(tag, req)

	// Embed the cover art into the MP3 file if provided.
	if req.Cover != nil && len(req.Cover.Data) > 0 {
		//nolint:exhaustruct // Description field intentionally empty for cover images.
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    req.Cover.ContentType,
			PictureType: id3v2.PTFrontCover,
			Picture:     req.Cover.Data,
		})
	}

	// Save the updated MP3 file.
	return tag.Save()
}

func (tp *TagProcessorImpl) addMP3Tags(tag *id3v2.Tag, req *WriteTagsRequest) {
	track, album := req.Track, req.Album

	// Set default encoding for the tags.
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Add basic metadata tags.
	tag.SetAlbum(album.Title)
	tag.SetArtist(track.Artist.Name)
	tag.SetTitle(track.Title)
	tag.SetYear(album.ReleaseYear())

	// Add track number and total tracks (e.g., "1/10").
	if track.TrackNumber > 0 && album.NumberOfTracks > 0 {
		tag.AddTextFrame(
			tag.CommonID("Track number/Position in set"),
			tag.DefaultEncoding(),
			strconv.FormatInt(track.TrackNumber, 10)+"/"+strconv.FormatInt(album.NumberOfTracks, 10),
		)
	}

	// Add additional metadata tags.
	tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), tag.DefaultEncoding(), albumArtistName(album, track))

	if track.Copyright != "" {
		tag.AddTextFrame(tag.CommonID("Copyright message"), tag.DefaultEncoding(), track.Copyright)
	}

	if track.ISRC != "" {
		tag.AddTextFrame(tag.CommonID("ISRC"), tag.DefaultEncoding(), track.ISRC)
	}
}

// albumArtistName returns the album artist, falling back to the track artist
// when the album does not report one.
func albumArtistName(album *tidal.Album, track *tidal.Track) string {
	if album.Artist != nil && album.Artist.Name != "" {
		return album.Artist.Name
	}

	return track.Artist.Name
}
