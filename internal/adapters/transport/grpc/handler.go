package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	libraryv1 "github.com/Miraines/MoonyAndStarry/library-service/api/library/v1"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/library/service"
	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
)

// Handler serves library.v1.BookService on top of the book catalog.
type Handler struct {
	books service.Service[model.Book]
	log   *zap.Logger
}

func NewHandler(books service.Service[model.Book], log *zap.Logger) *Handler {
	return &Handler{books: books, log: log}
}

func (h *Handler) GetBooks(ctx context.Context, _ *libraryv1.GetBooksRequest) (*libraryv1.GetBooksResponse, error) {
	items, err := h.books.List(ctx)
	if err != nil {
		return nil, h.mapError(err)
	}
	out := &libraryv1.GetBooksResponse{Books: make([]*libraryv1.Book, 0, len(items))}
	for _, b := range items {
		out.Books = append(out.Books, toProto(b))
	}
	return out, nil
}

func (h *Handler) GetBook(ctx context.Context, req *libraryv1.GetBookRequest) (*libraryv1.Book, error) {
	b, err := h.books.Get(ctx, int(req.Id))
	if err != nil {
		return nil, h.mapError(err)
	}
	return toProto(b), nil
}

func (h *Handler) AddBook(ctx context.Context, req *libraryv1.AddBookRequest) (*libraryv1.Book, error) {
	if req.Book == nil {
		return nil, status.Error(codes.InvalidArgument, "book is required")
	}
	b, err := h.books.Create(ctx, fromProto(req.Book))
	if err != nil {
		return nil, h.mapError(err)
	}
	return toProto(b), nil
}

func (h *Handler) UpdateBook(ctx context.Context, req *libraryv1.UpdateBookRequest) (*libraryv1.UpdateBookResponse, error) {
	if req.Book == nil {
		return nil, status.Error(codes.InvalidArgument, "book is required")
	}
	b := fromProto(req.Book)
	if err := h.books.Update(ctx, b.ID, b); err != nil {
		return nil, h.mapError(err)
	}
	return &libraryv1.UpdateBookResponse{}, nil
}

func (h *Handler) DeleteBook(ctx context.Context, req *libraryv1.DeleteBookRequest) (*libraryv1.DeleteBookResponse, error) {
	if err := h.books.Delete(ctx, int(req.Id)); err != nil {
		return nil, h.mapError(err)
	}
	return &libraryv1.DeleteBookResponse{}, nil
}

func toProto(b model.Book) *libraryv1.Book {
	out := &libraryv1.Book{
		Id:         int64(b.ID),
		Title:      b.Title,
		AuthorId:   int64(b.AuthorID),
		CategoryId: int64(b.CategoryID),
		Version:    int64(b.Version),
	}
	if b.Author != nil {
		out.AuthorName = b.Author.Name
	}
	if b.Category != nil {
		out.CategoryName = b.Category.Name
	}
	return out
}

func fromProto(b *libraryv1.Book) model.Book {
	return model.Book{
		ID:         int(b.Id),
		Title:      b.Title,
		AuthorID:   int(b.AuthorId),
		CategoryID: int(b.CategoryId),
		Version:    int(b.Version),
	}
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, customErrors.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, customErrors.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, customErrors.ErrConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, customErrors.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, customErrors.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid token")
	default:
		h.log.Error("gRPC call failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
