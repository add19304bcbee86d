package qrdx

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx/render"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard/imgkit"
)

// DefaultLogoLoader reads data: URIs and local files.
func DefaultLogoLoader(ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "data:") {
		data, _, err := imgkit.ReadDataURI(ref)
		return data, err
	}
	return os.ReadFile(ref)
}

// loadLogo returns the logo to show, or nil when there is none. An explicit
// image or byte option shows the logo even if the style does not ask for it.
func (o *exportOptions) loadLogo(st style.Resolved) (*render.LogoImage, error) {
	switch {
	case o.logoImage != nil:
		return &render.LogoImage{Image: o.logoImage}, nil
	case len(o.logoBytes) > 0:
		return decodeLogo(o.logoBytes)
	case !st.ShowLogo || strings.TrimSpace(st.Logo) == "":
		return nil, nil
	}

	data, err := o.logoLoader(st.Logo)
	if err != nil {
		return nil, errors.Wrapf(ErrLogoUnavailable, "load %s: %v", shortRef(st.Logo), err)
	}
	return decodeLogo(data)
}

func decodeLogo(data []byte) (*render.LogoImage, error) {
	img, mime, err := imgkit.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(ErrLogoUnavailable, "decode: %v", err)
	}
	if mime == imgkit.MIMESVG {
		return &render.LogoImage{Source: data, MIME: mime}, nil
	}
	return &render.LogoImage{Image: img, MIME: mime}, nil
}

// shortRef keeps data URIs out of error messages.
func shortRef(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		if i := strings.IndexByte(ref, ','); i > 0 {
			return ref[:i]
		}
		return "data URI"
	}
	return ref
}
