package docs

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.4 init --dir ../../../ --generalInfo cmd/app/main.go --output . --outputTypes go --parseInternal
