package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../usecase --output usecase --outpkg usecasemock --filename source_mock.go
