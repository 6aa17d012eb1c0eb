package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"

	"github.com/google/uuid"
)

// PostService implements post creation and editing, including image
// attachment validation and storage.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	mediaDir  string
}

// NewPostService returns a new PostService storing attachments under mediaDir.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, mediaDir string) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		mediaDir:  mediaDir,
	}
}

// PostInput carries the submitted form fields for creating or editing a post.
type PostInput struct {
	Text      string
	GroupSlug string
	Image     *multipart.FileHeader
}

// CanEdit is the authorization predicate for post mutation. It is evaluated
// after the existence check so not-found and not-authorized stay
// distinguishable internally, even though the edit surface answers 404 for
// both.
func CanEdit(post *models.Post, userID uint) bool {
	return post.AuthorID == userID
}

// Create validates the input and persists a new post for the author.
// Validation failures carry per-field messages and write nothing.
func (s *PostService) Create(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	groupID, imagePath, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:      strings.TrimSpace(in.Text),
		AuthorID:  authorID,
		GroupID:   groupID,
		ImagePath: imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// Edit updates the post found by the (author username, id) compound lookup.
// Only the editor matching the post's author may proceed; created_at is
// never touched.
func (s *PostService) Edit(ctx context.Context, username string, postID, editorID uint, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if !CanEdit(post, editorID) {
		return nil, models.NewForbiddenError("only the author can edit this post")
	}

	groupID, imagePath, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	post.Text = strings.TrimSpace(in.Text)
	post.GroupID = groupID
	if imagePath != "" {
		post.ImagePath = imagePath
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetForEdit runs the same compound lookup and authorization predicate as
// Edit without mutating anything; the edit form uses it.
func (s *PostService) GetForEdit(ctx context.Context, username string, postID, editorID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if !CanEdit(post, editorID) {
		return nil, models.NewForbiddenError("only the author can edit this post")
	}
	return post, nil
}

// validate checks the form fields, resolves the optional group slug, and
// stores the optional image. It returns field-level validation errors
// before any file or row is written.
func (s *PostService) validate(ctx context.Context, in PostInput) (groupID *uint, imagePath string, err error) {
	fields := map[string]string{}

	if strings.TrimSpace(in.Text) == "" {
		fields["text"] = "text is required"
	}

	if in.GroupSlug != "" {
		group, gerr := s.groupRepo.GetBySlug(ctx, in.GroupSlug)
		if gerr != nil {
			if models.IsNotFound(gerr) {
				fields["group"] = "unknown group"
			} else {
				return nil, "", gerr
			}
		} else {
			groupID = &group.ID
		}
	}

	if in.Image != nil {
		if verr := validateImage(in.Image); verr != nil {
			fields["image"] = verr.Error()
		}
	}

	if len(fields) > 0 {
		return nil, "", models.NewFieldValidationError(fields)
	}

	if in.Image != nil {
		imagePath, err = s.saveImage(in.Image)
		if err != nil {
			return nil, "", models.NewInternalError(err)
		}
	}
	return groupID, imagePath, nil
}

// validateImage sniffs the file content; only real images are accepted.
func validateImage(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("unreadable upload")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unreadable upload")
	}

	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("file is not an image (detected %s)", contentType)
	}
	return nil
}

// saveImage writes the upload under the media dir with a random name,
// keeping the original extension. The returned path is the one the file
// is served at, not the filesystem location.
func (s *PostService) saveImage(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	dst := filepath.Join(s.mediaDir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return "media/" + name, nil
}
