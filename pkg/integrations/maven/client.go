package maven

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/lastnpe/eeaconf/pkg/gav"
	"github.com/lastnpe/eeaconf/pkg/integrations"
)

const snapshotSuffix = "-SNAPSHOT"

// Client downloads artifacts from Maven2-layout repositories.
//
// Repositories addressed with http(s) URLs are fetched through the shared
// [integrations.Client] (retries, HTTP hooks); file:// repositories are read
// from disk. All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
}

// NewClient creates a repository client.
func NewClient() *Client {
	return &Client{Client: integrations.NewClient(map[string]string{
		"User-Agent": "eeaconf",
	})}
}

// ArtifactPath returns the repository-relative path of a in the Maven2
// layout, e.g. "org/lastnpe/eea/jdk-eea/2.3.0/jdk-eea-2.3.0.jar".
func ArtifactPath(a gav.Artifact) string {
	return artifactPath(a, a.Version)
}

func artifactPath(a gav.Artifact, fileVersion string) string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(a.GroupID, ".", "/"))
	b.WriteByte('/')
	b.WriteString(a.ArtifactID)
	b.WriteByte('/')
	b.WriteString(a.Version)
	b.WriteByte('/')
	b.WriteString(a.ArtifactID)
	b.WriteByte('-')
	b.WriteString(fileVersion)
	if a.Classifier != "" {
		b.WriteByte('-')
		b.WriteString(a.Classifier)
	}
	b.WriteByte('.')
	b.WriteString(a.Extension())
	return b.String()
}

// Fetch writes the file of a from the repository at repoURL into w.
//
// SNAPSHOT versions are looked up through the version-level
// maven-metadata.xml first; when that is unavailable the plain
// "-SNAPSHOT" file name is tried.
//
// Returns [integrations.ErrNotFound] if the repository does not have the
// artifact, and [integrations.ErrNetwork] for transport failures.
func (c *Client) Fetch(ctx context.Context, repoURL string, a gav.Artifact, w io.Writer) (int64, error) {
	rel := ArtifactPath(a)
	if strings.HasSuffix(a.Version, snapshotSuffix) {
		if v, err := c.snapshotVersion(ctx, repoURL, a); err == nil && v != "" {
			rel = artifactPath(a, v)
		}
	}
	return c.Download(ctx, repoURL, rel, w)
}

// Download writes the file at relPath under repoURL into w.
func (c *Client) Download(ctx context.Context, repoURL, relPath string, w io.Writer) (int64, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return 0, fmt.Errorf("invalid repository url %q: %w", repoURL, err)
	}
	if u.Scheme == "file" {
		return copyFile(u.Path+"/"+relPath, w)
	}
	return c.Client.Download(ctx, joinURL(repoURL, relPath), w)
}

func (c *Client) snapshotVersion(ctx context.Context, repoURL string, a gav.Artifact) (string, error) {
	rel := strings.ReplaceAll(a.GroupID, ".", "/") + "/" + a.ArtifactID + "/" + a.Version + "/maven-metadata.xml"
	var buf strings.Builder
	if _, err := c.Download(ctx, repoURL, rel, &buf); err != nil {
		return "", err
	}
	var md metadata
	if err := xml.Unmarshal([]byte(buf.String()), &md); err != nil {
		return "", err
	}
	return md.snapshotFileVersion(a), nil
}

func joinURL(base, rel string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}

func copyFile(path string, w io.Writer) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", integrations.ErrNotFound, path)
		}
		return 0, err
	}
	defer f.Close()
	return io.Copy(w, f)
}

type metadata struct {
	Versioning struct {
		Snapshot struct {
			Timestamp   string `xml:"timestamp"`
			BuildNumber string `xml:"buildNumber"`
		} `xml:"snapshot"`
		SnapshotVersions []snapshotVersion `xml:"snapshotVersions>snapshotVersion"`
	} `xml:"versioning"`
}

type snapshotVersion struct {
	Classifier string `xml:"classifier"`
	Extension  string `xml:"extension"`
	Value      string `xml:"value"`
}

func (m *metadata) snapshotFileVersion(a gav.Artifact) string {
	for _, sv := range m.Versioning.SnapshotVersions {
		if sv.Extension == a.Extension() && sv.Classifier == a.Classifier {
			return sv.Value
		}
	}
	s := m.Versioning.Snapshot
	if s.Timestamp == "" || s.BuildNumber == "" {
		return ""
	}
	return strings.TrimSuffix(a.Version, snapshotSuffix) + "-" + s.Timestamp + "-" + s.BuildNumber
}
