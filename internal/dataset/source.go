package dataset

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const sourceTimeout = 30 * time.Second

var httpClient = &http.Client{Timeout: sourceTimeout}

// Open returns a reader for a dataset source: a local path, an http(s)
// URL, or an ftp URL. The caller must close the returned ReadCloser.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return openHTTP(ctx, source)
	case strings.HasPrefix(source, "ftp://"):
		return openFTP(ctx, source)
	default:
		f, err := os.Open(source)
		return f, eris.Wrapf(err, "dataset: open %s", source)
	}
}

// Download copies a dataset source to a local file. Returns bytes
// written. XLSX sources need this detour because the workbook reader
// wants a seekable file.
func Download(ctx context.Context, source, path string) (int64, error) {
	rc, err := Open(ctx, source)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck

	file, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "dataset: create file")
	}
	defer file.Close() //nolint:errcheck

	n, err := io.Copy(file, rc)
	if err != nil {
		return n, eris.Wrap(err, "dataset: write file")
	}
	return n, nil
}

func openHTTP(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: create request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: download")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("dataset: unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// parseFTPURL extracts host (with port), path, and credentials from an
// FTP URL. Anonymous login is the default.
func parseFTPURL(rawURL string) (host, path, user, pass string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", "", "", eris.Wrap(err, "dataset: parse ftp url")
	}
	if u.Scheme != "ftp" {
		return "", "", "", "", eris.Errorf("dataset: expected ftp scheme, got %q", u.Scheme)
	}

	host = u.Host
	if _, _, splitErr := net.SplitHostPort(host); splitErr != nil {
		host = net.JoinHostPort(host, "21")
	}

	path = u.Path
	if path == "" {
		return "", "", "", "", eris.New("dataset: empty path in ftp url")
	}

	user, pass = "anonymous", "anonymous@"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	return host, path, user, pass, nil
}

// ftpConnReader wraps an FTP response and connection so that closing
// the reader also closes the response and disconnects from the server.
type ftpConnReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpConnReader) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpConnReader) Close() error {
	respErr := r.resp.Close()
	quitErr := r.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "dataset: close ftp response")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "dataset: quit ftp connection")
	}
	return nil
}

func openFTP(ctx context.Context, ftpURL string) (io.ReadCloser, error) {
	host, path, user, pass, err := parseFTPURL(ftpURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("dataset: ftp connecting", zap.String("host", host), zap.String("path", path))

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(sourceTimeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "dataset: ftp dial")
	}

	if err := conn.Login(user, pass); err != nil {
		conn.Quit() //nolint:errcheck
		return nil, eris.Wrap(err, "dataset: ftp login")
	}

	resp, err := conn.Retr(path)
	if err != nil {
		conn.Quit() //nolint:errcheck
		return nil, eris.Wrap(err, "dataset: ftp retrieve")
	}

	return &ftpConnReader{resp: resp, conn: conn}, nil
}
