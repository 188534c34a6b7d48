package bootscene

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gorkitale/intro/internal/decode"
	"github.com/gorkitale/intro/internal/gifdec"
	"github.com/gorkitale/intro/internal/videodec"
)

// openSource returns the controller's source factory, dispatching on file
// extension: .gif goes to the stdlib-based GIF source, anything else to
// the FFmpeg-backed video source.
func openSource(log *slog.Logger) func(path string) (decode.Source, decode.Info, error) {
	return func(path string) (decode.Source, decode.Info, error) {
		if strings.EqualFold(filepath.Ext(path), ".gif") {
			src, info, err := gifdec.Open(path, log)
			if err != nil {
				return nil, decode.Info{}, err
			}
			return src, info, nil
		}
		src, info, err := videodec.Open(path, log)
		if err != nil {
			return nil, decode.Info{}, err
		}
		return src, info, nil
	}
}
