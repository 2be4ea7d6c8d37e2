package libraryv1

type Book struct {
	Id           int64  `json:"id"`
	Title        string `json:"title"`
	AuthorId     int64  `json:"authorId"`
	CategoryId   int64  `json:"categoryId"`
	AuthorName   string `json:"authorName,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	Version      int64  `json:"version"`
}

type GetBooksRequest struct{}

type GetBooksResponse struct {
	Books []*Book `json:"books"`
}

type GetBookRequest struct {
	Id int64 `json:"id"`
}

type AddBookRequest struct {
	Book *Book `json:"book"`
}

type UpdateBookRequest struct {
	Book *Book `json:"book"`
}

type UpdateBookResponse struct{}

type DeleteBookRequest struct {
	Id int64 `json:"id"`
}

type DeleteBookResponse struct{}
