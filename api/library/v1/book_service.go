package libraryv1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	BookService_ServiceName = "library.v1.BookService"

	BookService_GetBooks_FullMethodName   = "/library.v1.BookService/GetBooks"
	BookService_GetBook_FullMethodName    = "/library.v1.BookService/GetBook"
	BookService_AddBook_FullMethodName    = "/library.v1.BookService/AddBook"
	BookService_UpdateBook_FullMethodName = "/library.v1.BookService/UpdateBook"
	BookService_DeleteBook_FullMethodName = "/library.v1.BookService/DeleteBook"
)

// BookServiceClient is the client API for BookService.
type BookServiceClient interface {
	GetBooks(ctx context.Context, in *GetBooksRequest, opts ...grpc.CallOption) (*GetBooksResponse, error)
	GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error)
	AddBook(ctx context.Context, in *AddBookRequest, opts ...grpc.CallOption) (*Book, error)
	UpdateBook(ctx context.Context, in *UpdateBookRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error)
	DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error)
}

type bookServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBookServiceClient(cc grpc.ClientConnInterface) BookServiceClient {
	return &bookServiceClient{cc}
}

func (c *bookServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *bookServiceClient) GetBooks(ctx context.Context, in *GetBooksRequest, opts ...grpc.CallOption) (*GetBooksResponse, error) {
	out := new(GetBooksResponse)
	if err := c.invoke(ctx, BookService_GetBooks_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookServiceClient) GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error) {
	out := new(Book)
	if err := c.invoke(ctx, BookService_GetBook_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookServiceClient) AddBook(ctx context.Context, in *AddBookRequest, opts ...grpc.CallOption) (*Book, error) {
	out := new(Book)
	if err := c.invoke(ctx, BookService_AddBook_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookServiceClient) UpdateBook(ctx context.Context, in *UpdateBookRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error) {
	out := new(UpdateBookResponse)
	if err := c.invoke(ctx, BookService_UpdateBook_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookServiceClient) DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error) {
	out := new(DeleteBookResponse)
	if err := c.invoke(ctx, BookService_DeleteBook_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// BookServiceServer is the server API for BookService.
type BookServiceServer interface {
	GetBooks(context.Context, *GetBooksRequest) (*GetBooksResponse, error)
	GetBook(context.Context, *GetBookRequest) (*Book, error)
	AddBook(context.Context, *AddBookRequest) (*Book, error)
	UpdateBook(context.Context, *UpdateBookRequest) (*UpdateBookResponse, error)
	DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error)
}

func RegisterBookServiceServer(s grpc.ServiceRegistrar, srv BookServiceServer) {
	s.RegisterService(&BookService_ServiceDesc, srv)
}

// unary adapts one typed method to the grpc.MethodDesc handler shape.
func unary[Req any](method string, call func(BookServiceServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var BookService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BookService_ServiceName,
	HandlerType: (*BookServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetBooks",
			Handler: unary(BookService_GetBooks_FullMethodName, func(s BookServiceServer, ctx context.Context, in *GetBooksRequest) (any, error) {
				return s.GetBooks(ctx, in)
			}),
		},
		{
			MethodName: "GetBook",
			Handler: unary(BookService_GetBook_FullMethodName, func(s BookServiceServer, ctx context.Context, in *GetBookRequest) (any, error) {
				return s.GetBook(ctx, in)
			}),
		},
		{
			MethodName: "AddBook",
			Handler: unary(BookService_AddBook_FullMethodName, func(s BookServiceServer, ctx context.Context, in *AddBookRequest) (any, error) {
				return s.AddBook(ctx, in)
			}),
		},
		{
			MethodName: "UpdateBook",
			Handler: unary(BookService_UpdateBook_FullMethodName, func(s BookServiceServer, ctx context.Context, in *UpdateBookRequest) (any, error) {
				return s.UpdateBook(ctx, in)
			}),
		},
		{
			MethodName: "DeleteBook",
			Handler: unary(BookService_DeleteBook_FullMethodName, func(s BookServiceServer, ctx context.Context, in *DeleteBookRequest) (any, error) {
				return s.DeleteBook(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "library/v1/book_service",
}
