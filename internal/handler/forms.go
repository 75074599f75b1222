package handler

import (
	"fmt"
	"html"

	"kitchen-guide/internal/model"
)

// Static form documents. The catalog is consumed as JSON; these minimal
// pages exist so the creation and login flows can be driven from a browser
// without a templating layer.

const newProductFormHTML = `<!DOCTYPE html>
<html>
<head><title>New Product</title></head>
<body>
<h1>New Product</h1>
<form action="/product" method="post" enctype="multipart/form-data">
  <p><label>Supplier name <input type="text" name="supplier_name" required></label></p>
  <p><label>Product name <input type="text" name="product_name" required></label></p>
  <p><label>Location <input type="text" name="location" required></label></p>
  <p><label>Description <textarea name="description" required></textarea></label></p>
  <p><label>Picture <input type="file" name="picture" accept="image/jpeg,image/png,image/webp"></label></p>
  <p><button type="submit">Create</button></p>
</form>
</body>
</html>`

const newPreparationFormHTML = `<!DOCTYPE html>
<html>
<head><title>New Preparation</title></head>
<body>
<h1>New Preparation</h1>
<form action="/preparation" method="post" enctype="multipart/form-data">
  <p><label>Name <input type="text" name="name" required></label></p>
  <p><label>Category
    <select name="category">
      <option value="fruit">Fruit</option>
      <option value="bread">Bread</option>
      <option value="vegetable">Vegetable</option>
      <option value="meat">Meat</option>
      <option value="seafood">Seafood</option>
    </select>
  </label></p>
  <p><label>Shift
    <select name="shift">
      <option value="breakfast">Breakfast</option>
      <option value="lunch">Lunch</option>
      <option value="both">Both</option>
    </select>
  </label></p>
  <p><label>Location <input type="text" name="location" required></label></p>
  <p><label>Steps overview <textarea name="steps" required></textarea></label></p>
  <p><label>Picture <input type="file" name="picture" accept="image/jpeg,image/png,image/webp"></label></p>
  <p><label>Step 1 <input type="text" name="step_description_1"></label>
     <input type="file" name="step_image_1"></p>
  <p><label>Step 2 <input type="text" name="step_description_2"></label>
     <input type="file" name="step_image_2"></p>
  <p><label>Step 3 <input type="text" name="step_description_3"></label>
     <input type="file" name="step_image_3"></p>
  <p><button type="submit">Create</button></p>
</form>
</body>
</html>`

const loginFormHTML = `<!DOCTYPE html>
<html>
<head><title>Log In</title></head>
<body>
<h1>Log In</h1>
<form action="/login" method="post">
  <p><label>Username <input type="text" name="username" required></label></p>
  <p><label>Password <input type="password" name="password" required></label></p>
  <p><button type="submit">Log in</button></p>
</form>
<p><a href="/register">Register</a></p>
</body>
</html>`

const registerFormHTML = `<!DOCTYPE html>
<html>
<head><title>Register</title></head>
<body>
<h1>Register</h1>
<form action="/register" method="post">
  <p><label>Username <input type="text" name="username" required></label></p>
  <p><label>Email <input type="email" name="email" required></label></p>
  <p><label>Password <input type="password" name="password" required></label></p>
  <p><label>Confirm password <input type="password" name="confirm_password" required></label></p>
  <p><button type="submit">Register</button></p>
</form>
</body>
</html>`

const editProductFormHTML = `<!DOCTYPE html>
<html>
<head><title>Edit Product</title></head>
<body>
<h1>Edit Product</h1>
<form action="/product/%s/update" method="post" enctype="multipart/form-data">
  <p><label>Supplier name <input type="text" name="supplier_name" value="%s" required></label></p>
  <p><label>Product name <input type="text" name="product_name" value="%s" required></label></p>
  <p><label>Location <input type="text" name="location" value="%s" required></label></p>
  <p><label>Description <textarea name="description" required>%s</textarea></label></p>
  <p><label>Picture <input type="file" name="picture" accept="image/jpeg,image/png,image/webp"></label></p>
  <p><button type="submit">Save</button></p>
</form>
</body>
</html>`

// renderProductEditForm fills the edit form with the product's current
// values. Leaving the picture input empty keeps the stored image.
func renderProductEditForm(p *model.Product) string {
	return fmt.Sprintf(editProductFormHTML,
		p.ID,
		html.EscapeString(p.SupplierName),
		html.EscapeString(p.ProductName),
		html.EscapeString(p.Location),
		html.EscapeString(p.Description),
	)
}

const editPreparationFormHTML = `<!DOCTYPE html>
<html>
<head><title>Edit Preparation</title></head>
<body>
<h1>Edit Preparation</h1>
<form action="/preparation/%s/update" method="post" enctype="multipart/form-data">
  <p><label>Name <input type="text" name="name" value="%s" required></label></p>
  <p><label>Category
    <select name="category">
      <option value="fruit"%s>Fruit</option>
      <option value="bread"%s>Bread</option>
      <option value="vegetable"%s>Vegetable</option>
      <option value="meat"%s>Meat</option>
      <option value="seafood"%s>Seafood</option>
    </select>
  </label></p>
  <p><label>Shift
    <select name="shift">
      <option value="breakfast"%s>Breakfast</option>
      <option value="lunch"%s>Lunch</option>
      <option value="both"%s>Both</option>
    </select>
  </label></p>
  <p><label>Location <input type="text" name="location" value="%s" required></label></p>
  <p><label>Steps overview <textarea name="steps" required>%s</textarea></label></p>
  <p><label>Picture <input type="file" name="picture" accept="image/jpeg,image/png,image/webp"></label></p>
  <p><button type="submit">Save</button></p>
</form>
</body>
</html>`

// renderPreparationEditForm fills the edit form with the preparation's
// current values, marking its category and shift as selected.
func renderPreparationEditForm(p *model.Preparation) string {
	return fmt.Sprintf(editPreparationFormHTML,
		p.ID,
		html.EscapeString(p.Name),
		selectedAttr(p.Category == model.CategoryFruit),
		selectedAttr(p.Category == model.CategoryBread),
		selectedAttr(p.Category == model.CategoryVegetable),
		selectedAttr(p.Category == model.CategoryMeat),
		selectedAttr(p.Category == model.CategorySeafood),
		selectedAttr(p.Shift == model.ShiftBreakfast),
		selectedAttr(p.Shift == model.ShiftLunch),
		selectedAttr(p.Shift == model.ShiftBoth),
		html.EscapeString(p.Location),
		html.EscapeString(p.Steps),
	)
}

func selectedAttr(selected bool) string {
	if selected {
		return " selected"
	}
	return ""
}
