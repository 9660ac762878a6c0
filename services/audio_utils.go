package services

import (
	"io"
	"mime/multipart"

	tcmp3 "github.com/tcolgate/mp3"
)

// GetMP3Duration decodes an uploaded MP3 frame by frame and returns its
// duration in seconds. Unknown or corrupt frames abort with an error.
func GetMP3Duration(fileHeader *multipart.FileHeader) (float64, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var (
		dur     float64
		dec     = tcmp3.NewDecoder(file)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}
