package firestore

import (
	"context"

	"apilogin/internal/domain/constants"
	"apilogin/internal/domain/entity"
	"apilogin/internal/domain/repository"
	"apilogin/internal/errors"
	"apilogin/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/go-viper/mapstructure/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Document field paths written by UpdateSession.
const (
	fieldIsLoggedIn = "isLoggedIn"
	fieldLastLogin  = "lastLogin"
)

// userRepository stores one document per account at users/{email}.
type userRepository struct {
	users *firestore.CollectionRef
}

// NewUserRepository returns a credential store backed by a Firestore collection.
func NewUserRepository(client *firestore.Client, collection string) repository.UserRepository {
	if collection == "" {
		collection = constants.DefaultUsersCollection
	}

	return &userRepository{users: client.Collection(collection)}
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	snap, err := repo.users.Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user document")
	}

	userM, err := decodeUser(snap.Data())
	if err != nil {
		return nil, err
	}
	if userM.Email == "" {
		userM.Email = snap.Ref.ID
	}

	return model.ToUserDomain(userM)
}

func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	snap, err := repo.users.Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to get user document")
	}

	return snap.Exists(), nil
}

// Create writes the document only if it does not exist yet.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := repo.users.Doc(user.Email).Create(ctx, model.FromUserDomain(user))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrUserAlreadyExists
		}

		return errors.Wrap(err, "failed to create user document")
	}

	return nil
}

// UpdateSession merges the session fields; Update fails with NotFound if the document is absent.
func (repo *userRepository) UpdateSession(ctx context.Context, email string, patch entity.SessionPatch) error {
	_, err := repo.users.Doc(email).Update(ctx, sessionUpdates(patch))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update user session")
	}

	return nil
}

func sessionUpdates(patch entity.SessionPatch) []firestore.Update {
	return []firestore.Update{
		{Path: fieldIsLoggedIn, Value: patch.IsLoggedIn},
		{Path: fieldLastLogin, Value: patch.LastLogin},
	}
}

// decodeUser maps document fields onto the model. Older documents store
// height, weight and age as strings, so numbers are decoded weakly.
func decodeUser(data map[string]any) (*model.UserModel, error) {
	var userM model.UserModel
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &userM,
		TagName:          "firestore",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build user document decoder")
	}
	if err := decoder.Decode(data); err != nil {
		return nil, errors.Wrap(err, "failed to decode user document")
	}

	return &userM, nil
}
